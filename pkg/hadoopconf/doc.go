// Package hadoopconf implements an ordered, Hadoop-style key/value
// configuration store.
//
// A Configuration is built from programmatic Set calls and from XML
// resources in the Hadoop <configuration> format:
//
//	<configuration>
//	  <property>
//	    <name>fs.defaultFS</name>
//	    <value>hdfs://namenode:8020</value>
//	    <final>true</final>
//	  </property>
//	</configuration>
//
// Resources are merged eagerly and in call order, so later resources
// override earlier ones unless a key was marked final. Get expands ${key}
// and ${env.NAME} references; GetRaw does not.
//
// A Configuration is not safe for concurrent use.
package hadoopconf
